package s3client

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/morispolanco/subjuntivo-buscador/logger"
)

const (
	JSONContentType = "application/json"
	maxRetries      = 4
)

var (
	clientLogger = logger.NewLogger("S3Client")
	sdkLogger    = logger.NewLogger("S3-SDK")

	errNoSession = errors.New("no S3 session available")
)

type EnvironmentConfig struct {
	BucketName  string `envconfig:"SUBJ_STORAGE_BUCKET_NAME" required:"true"`
	Env         string `envconfig:"SUBJ_ENV" default:"prod"`
	Region      string `envconfig:"SUBJ_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"SUBJ_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"SUBJ_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"SUBJ_AWS_ACCESS_KEY" default:""`
}

// Client reads chunk texts and writes reports in one bucket. The session is replaced
// once when an operation fails, then the operation is retried.
type Client struct {
	region string
	env    EnvironmentConfig

	mu   sync.Mutex
	sess *session.Session
}

func New() (*Client, error) {
	errLogger := clientLogger.With().Caller().Logger()
	env, err := readEnvironment(&errLogger)
	if err != nil {
		clientLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := &Client{region: env.Region, env: env}
	if _, err := client.refresh(nil); err != nil {
		return nil, err
	}
	return client, nil
}

// Upload stores data under key. An empty contentType leaves the S3 default.
func (client *Client) Upload(data string, key string, contentType string) error {
	s3Logger := client.objectLogger(clientLogger, key)
	params := &s3manager.UploadInput{
		Bucket: aws.String(client.env.BucketName),
		Key:    aws.String(key),
	}
	if contentType != "" {
		params.ContentType = aws.String(contentType)
	}
	return client.withSession(func(sess *session.Session) error {
		params.Body = strings.NewReader(data)
		uploader := s3manager.NewUploader(client.sdkSession(sess, key))
		s3Logger.Debug().Int("bytes", len(data)).Msg("Uploading the file")
		if _, err := uploader.Upload(params); err != nil {
			s3Logger.Error().Err(err).Msg("Failed to upload file")
			return err
		}
		return nil
	})
}

func (client *Client) Download(key string) ([]byte, error) {
	s3Logger := client.objectLogger(clientLogger, key)
	params := &s3.GetObjectInput{
		Bucket: aws.String(client.env.BucketName),
		Key:    aws.String(key),
	}
	var data []byte
	err := client.withSession(func(sess *session.Session) error {
		buf := aws.NewWriteAtBuffer([]byte{})
		downloader := s3manager.NewDownloader(client.sdkSession(sess, key))
		size, err := downloader.Download(buf, params)
		if err != nil {
			s3Logger.Error().Err(err).Msg("Failed to download file")
			return err
		}
		s3Logger.Debug().Int64("bytes", size).Msg("Downloaded file")
		data = buf.Bytes()
		return nil
	})
	return data, err
}

func (client *Client) Close() {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.sess = nil
	clientLogger.Info().Msg("Closing client")
}

func (client *Client) withSession(op func(sess *session.Session) error) error {
	client.mu.Lock()
	sess := client.sess
	client.mu.Unlock()
	if sess == nil {
		return errNoSession
	}
	err := op(sess)
	if err == nil {
		return nil
	}
	clientLogger.Error().Err(err).Msg("Caught error while using S3 session, trying to refresh it")
	if sess, err = client.refresh(sess); err != nil {
		return err
	}
	return op(sess)
}

// refresh replaces stale with a new session unless another caller already did.
func (client *Client) refresh(stale *session.Session) (*session.Session, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.sess != nil && client.sess != stale {
		return client.sess, nil
	}
	sess, err := client.newSession()
	if err != nil {
		client.sess = nil
		return nil, err
	}
	client.sess = sess
	return sess, nil
}

// newSession tries the instance role first, then the static credentials from the environment.
func (client *Client) newSession() (*session.Session, error) {
	candidates := []struct {
		name   string
		config func() (*aws.Config, error)
	}{
		{"EC2", func() (*aws.Config, error) { return client.createEC2Config(), nil }},
		{"env credentials", client.createEnvConfig},
	}
	var errs []error
	for _, candidate := range candidates {
		cfg, err := candidate.config()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", candidate.name, err))
			continue
		}
		sess, err := session.NewSession(cfg)
		if err == nil {
			_, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
		}
		if err != nil {
			clientLogger.Info().Err(err).Msgf("Could not initialize S3 session using %s", candidate.name)
			errs = append(errs, fmt.Errorf("%s: %w", candidate.name, err))
			continue
		}
		clientLogger.Info().Msgf("S3 session successfully initialized using %s", candidate.name)
		return sess, nil
	}
	return nil, fmt.Errorf("could not initialize S3 session: %w", errors.Join(errs...))
}

func (client *Client) createEC2Config() *aws.Config {
	return aws.NewConfig().
		WithRegion(client.region).
		WithMaxRetries(maxRetries).
		WithLogLevel(aws.LogDebug)
}

func (client *Client) createEnvConfig() (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(client.env.AccessKeyID, client.env.AccessKey, "")
	if _, err := creds.Get(); err != nil {
		return nil, err
	}
	cfg := client.createEC2Config().WithCredentials(creds)

	// path style addressing for local S3-compatible endpoints
	if client.env.Env == "dev" && client.env.AwsEndpoint != "" {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

func (client *Client) sdkSession(sess *session.Session, key string) *session.Session {
	sdkLog := client.objectLogger(sdkLogger, key)
	return sess.Copy(&aws.Config{Logger: getLogger(sdkLog)})
}

func (client *Client) objectLogger(base zerolog.Logger, key string) zerolog.Logger {
	return base.With().Str("key", key).Str("bucket", client.env.BucketName).Logger()
}

func readEnvironment(errLogger *zerolog.Logger) (EnvironmentConfig, error) {
	var config EnvironmentConfig
	if err := envconfig.Process("", &config); err != nil {
		errLogger.Err(err).Msg("Got error while processing environment")
		return config, err
	}
	return config, nil
}

// sdkLogAdapter sends aws-sdk-go log lines to zerolog.
type sdkLogAdapter struct {
	zl zerolog.Logger
}

func getLogger(zl zerolog.Logger) *sdkLogAdapter {
	return &sdkLogAdapter{zl}
}

func (adapter *sdkLogAdapter) Log(v ...interface{}) {
	adapter.zl.Debug().Msg(fmt.Sprint(v...))
}
