package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-f local file storage directory
//	-files-backend blob storage backend (local, s3)
//	-c/-config json file path with configs
//	-env .env file path
//	-csrf-sign-key anti-forgery token signing key
//	-csrf-ttl anti-forgery token lifetime (e.g., "2h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-redis redis URI for the shared rate limiter
//	-kafka comma separated kafka brokers
//	-log-level log level (debug, info, warn, error)
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, filesDir, filesBackend string
	var jsonConfigPath, dotEnvPath string
	var csrfSignKey string
	var csrfTTL, requestTimeout time.Duration
	var redisURI, kafkaBrokers string
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&filesDir, "f", "", "Local file storage directory")
	fs.StringVar(&filesBackend, "files-backend", "", "Blob storage backend (local, s3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&dotEnvPath, "env", "", ".env file path")
	fs.StringVar(&csrfSignKey, "csrf-sign-key", "", "Anti-forgery token signing key")
	fs.DurationVar(&csrfTTL, "csrf-ttl", 0, "Anti-forgery token lifetime (e.g., 2h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&redisURI, "redis", "", "Redis URI for the shared rate limiter")
	fs.StringVar(&kafkaBrokers, "kafka", "", "Comma separated Kafka brokers")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			CSRFSignKey:  csrfSignKey,
			CSRFTokenTTL: csrfTTL,
			LogLevel:     logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				Backend: filesBackend,
				Dir:     filesDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			RateLimit: RateLimit{
				RedisURI: redisURI,
			},
		},
		Broker: Broker{
			Brokers: splitList(kafkaBrokers),
		},
		JSONFilePath: jsonConfigPath,
		DotEnvPath:   dotEnvPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. It validates the port range, checks IP
// correctness unless host is "localhost", and returns an error if the format
// or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
