// Package store persists evaluation records to MongoDB.
//
// [MongoSink] implements scoring.Sink, so it can be passed to a batch run as
// an extra sink next to the NDJSON writer:
//
//	sink, err := store.Open(ctx, store.Options{URI: uri, Database: "netscore", Collection: "records"})
//	if err != nil {
//	    return err
//	}
//	defer sink.Close(ctx)
//	summary, err := batch.Run(ctx, urls, stdout, sink.ForRun(runID))
//
// Each record becomes one document tagged with the run it belongs to.
package store
