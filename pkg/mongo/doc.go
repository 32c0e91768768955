// Package mongo connects to MongoDB with the official v2 driver and stores the
// subscription record in it.
//
// New retries the initial connect and ping. KV implements the paywall Backend
// contract: a record is one document whose _id is the record key; creation is
// guarded by the unique _id index and updates are filtered on the previous
// value.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := paywall.NewStore(mongo.NewKV(client, cfg))
package mongo
