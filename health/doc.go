// Package health serves the ping route that load balancers and orchestrators
// poll. Its access lines are the ones the logging health-check filter drops,
// and its requests opt out of monitoring sampling.
//
//	mux.Handle(config.DefaultHealthCheckPath, health.Handler(dbCheck))
package health
