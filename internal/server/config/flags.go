package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/labsite/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-o string   allowed CORS origins, comma separated
//	-w string   static site directory
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x string   public base URL for uploaded objects
//
// Arguments are filtered with flagx.FilterArgs first, so -c and flags owned
// by other components do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-o", "-w", "-l", "-u", "-p", "-b", "-g", "-e", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenTTL := fs.Int("t", 0, "token validity (in minutes)")
	origins := fs.String("o", "", "allowed CORS origins, comma separated")

	fs.StringVar(&config.StaticDir, "w", config.StaticDir, "static site directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "x", config.S3PublicBaseURL, "public base URL for uploaded objects")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *tokenTTL > 0 {
		config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
	}
	if *origins != "" {
		config.CORSOrigins = splitList(*origins)
	}
	return nil
}
