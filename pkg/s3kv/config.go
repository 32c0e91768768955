package s3kv

// Config holds the bucket location and credentials. Empty credentials fall
// back to the default AWS credential chain.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`                            // for S3-compatible services
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // MinIO and similar
	KeyPrefix      string `env:"S3_KEY_PREFIX" envDefault:"paywall/"`
}
