/*
Package observability turns survey lifecycle hooks into Prometheus metrics and
structured audit logs.

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Merge(m.Hooks(), observability.AuditHooks(logger))
	controller := survey.NewController(sessions, survey.WithLifecycleHooks(hooks))
*/
package observability
