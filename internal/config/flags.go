package config

import (
	"errors"
	"flag"
	"net"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-r remote server address in format [host]:[port]
//	-d local database file path
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "10s", "1m")
//	-subscribe-retry-interval snapshot subscription reconnect pause
//	-startup-sync-timeout bound on the initial fetch-and-merge
//	-net-resample-interval network monitor re-sample period
//	-shutdown-timeout bound on graceful server shutdown
func ParseFlags() *StructuredConfig {
	var serverAddress, remoteAddress NetAddress
	var databasePath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var subscribeRetryInterval time.Duration
	var startupSyncTimeout time.Duration
	var netResampleInterval time.Duration
	var shutdownTimeout time.Duration

	flag.Var(&serverAddress, "a", "Server listen address host:port")
	flag.Var(&remoteAddress, "r", "Remote server address host:port")
	flag.StringVar(&databasePath, "d", "", "Local database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s, 1m)")
	flag.DurationVar(&subscribeRetryInterval, "subscribe-retry-interval", 0, "Subscription reconnect pause (e.g., 5s)")
	flag.DurationVar(&startupSyncTimeout, "startup-sync-timeout", 0, "Startup sync timeout (e.g., 10s)")
	flag.DurationVar(&netResampleInterval, "net-resample-interval", 0, "Network re-sample period (e.g., 3s)")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 5s)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Path: databasePath,
			},
		},
		Remote: Remote{
			HTTPAddress:            remoteAddress.String(),
			RequestTimeout:         requestTimeout,
			SubscribeRetryInterval: subscribeRetryInterval,
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Workers: Workers{
			StartupSyncTimeout:  startupSyncTimeout,
			NetResampleInterval: netResampleInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
