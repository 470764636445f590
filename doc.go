// Package vecquery provides a resilient Go client for a remote vector-search
// backend reached over REST, typically through an ephemeral tunnel that
// intermittently answers 502.
//
// The client owns a single search session: the active configuration, the
// last query, and the last result set. Configuration updates and search
// workflows are serialized against each other; a failed operation never
// clobbers prior session state. Every backend call runs under a bounded
// retry policy with linear backoff, and each request is issued on a fresh
// connection since pooled connections can go stale behind the tunnel.
//
//	client, _ := vecquery.New(
//	    vecquery.WithBaseURL("https://busy-kings-deny.loca.lt"),
//	    vecquery.WithRetry(5, time.Second),
//	)
//	_ = client.Config().Apply(ctx, vecquery.ConfigParams{
//	    DocCorrelation:  0.9,
//	    RecallNumber:    20,
//	    RetrievalWeight: vecquery.WeightSemantic,
//	})
//	results, _ := client.Search(ctx, "climate policy")
//
// The health probe is advisory only:
//
//	if status := client.Health(ctx); !status.Connected {
//	    // render an indicator; searches may still be attempted
//	}
package vecquery
