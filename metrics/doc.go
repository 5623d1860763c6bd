// Package metrics exposes Prometheus metrics for page traversals.
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector(metrics.DefaultConfig(), reg)
//	res, err := paging.Paginate(ctx, f, req, paging.WithPageHook(c.PageHook()))
//	c.ObserveTraversal(res != nil && res.Exhausted, err)
package metrics
