/*
Package session implements the survey session store.

It maps each user ID to exactly one domain.Session, serializing access per user with
reference-counted local locks and, optionally, a distributed lock shared by replicas.
Persistence is delegated to a ports.SessionStore adapter (memory or Redis).
*/
package session
