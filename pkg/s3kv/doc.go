// Package s3kv stores the subscription record as an object in Amazon S3 or an
// S3-compatible service.
//
// KV implements the paywall Backend contract with conditional writes: the
// first write uses If-None-Match and later writes use If-Match on the ETag of
// the object that was compared. A failed precondition reports a lost race
// instead of an error.
//
//	kv, err := s3kv.New(ctx, s3kv.Config{Bucket: "creator-site", Region: "eu-west-1"})
//	if err != nil {
//		return err
//	}
//	store := paywall.NewStore(kv)
package s3kv
