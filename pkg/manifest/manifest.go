// Package manifest loads the one-shot feed manifest: an ordered JSON array of
// media locators. There is no retry policy here - a failed fetch leaves the
// feed uninitialized and the caller surfaces an error state.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrUnavailable marks any fetch or parse failure of the manifest.
var ErrUnavailable = errors.New("manifest unavailable")

// Fetch loads the manifest from source: an http(s) URL, an s3://bucket/key
// object, or a local file path.
func Fetch(source string) ([]string, error) {
	log.Printf("manifest.Fetch called | source=%s", source)

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetchHTTP(source)
	case strings.HasPrefix(source, "s3://"):
		return fetchS3(source)
	default:
		return fetchFile(source)
	}
}

func fetchHTTP(url string) ([]string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}
	return decode(resp.Body)
}

func fetchS3(source string) ([]string, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(source, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: malformed s3 source %q", ErrUnavailable, source)
	}

	// Load credentials and region from environment variables
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("%w: missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY", ErrUnavailable)
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer result.Body.Close()

	return decode(result.Body)
}

func fetchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) ([]string, error) {
	var locators []string
	if err := json.NewDecoder(r).Decode(&locators); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(locators) == 0 {
		return nil, fmt.Errorf("%w: empty manifest", ErrUnavailable)
	}

	log.Printf("manifest.Fetch completed | %d locator(s)", len(locators))
	return locators, nil
}
