package cache

import (
	"crypto/tls"
	"sync"

	"tasktracker/internal/config"

	"github.com/valkey-io/valkey-go"
)

var (
	clientOnce sync.Once
	client     valkey.Client
)

func GetCache() valkey.Client {
	clientOnce.Do(func() {
		env := config.GetEnv()

		options := valkey.ClientOption{
			InitAddress: []string{env.ValkeyHost + ":" + env.ValkeyPort},
			Username:    env.ValkeyUsername,
			Password:    env.ValkeyPassword,
			ClientName:  "tasktracker",
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{ServerName: env.ValkeyHost}
		}

		created, err := valkey.NewClient(options)
		if err != nil {
			panic(err)
		}

		client = created
	})

	return client
}
