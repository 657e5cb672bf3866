package file

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFile struct {
	writeErr error
	syncErr  error
	closeErr error
	closes   int
}

func (f *fakeFile) WriteString(s string) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(s), nil
}

func (f *fakeFile) Sync() error { return f.syncErr }

func (f *fakeFile) Close() error {
	f.closes++
	return f.closeErr
}

func withFakeFile(t *testing.T, f *fakeFile) {
	t.Helper()
	orig := openFile
	openFile = func(string, int, os.FileMode) (file, error) { return f, nil }
	t.Cleanup(func() { openFile = orig })
}

func completeRecord() domain.Record {
	return domain.Record{
		Age:        domain.AgeFiftyPlus,
		Status:     domain.StatusPositive,
		Instrument: domain.InstrumentCrypto,
		Funding:    domain.Funding1Mto5M,
		Contact:    "+100",
	}
}

func TestSink_ClosesFileExactlyOnce(t *testing.T) {
	closeErr := errors.New("close failed")
	writeErr := errors.New("short write")

	tests := []struct {
		name    string
		file    *fakeFile
		wantErr []error
	}{
		{"success", &fakeFile{}, nil},
		{"close error is reported", &fakeFile{closeErr: closeErr}, []error{domain.ErrSinkWrite, closeErr}},
		{"write error", &fakeFile{writeErr: writeErr}, []error{domain.ErrSinkWrite, writeErr}},
		{"write and close errors", &fakeFile{writeErr: writeErr, closeErr: closeErr}, []error{writeErr, closeErr}},
		{"sync error", &fakeFile{syncErr: writeErr}, []error{domain.ErrSinkWrite, writeErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFakeFile(t, tt.file)

			err := NewSink("data.txt").Append(context.Background(), completeRecord())

			assert.Equal(t, 1, tt.file.closes)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
