package httpserver

import "time"

// Config is the env-driven server configuration.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults;
// opts are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	fromCfg := []Option{
		func(s *settings) {
			if cfg.Addr != "" {
				s.addr = cfg.Addr
			}
			if cfg.ReadHeaderTimeout > 0 {
				s.readHeaderTimeout = cfg.ReadHeaderTimeout
			}
			if cfg.ReadTimeout > 0 {
				s.readTimeout = cfg.ReadTimeout
			}
			if cfg.WriteTimeout > 0 {
				s.writeTimeout = cfg.WriteTimeout
			}
			if cfg.IdleTimeout > 0 {
				s.idleTimeout = cfg.IdleTimeout
			}
			if cfg.ShutdownTimeout > 0 {
				s.shutdownTimeout = cfg.ShutdownTimeout
			}
		},
	}
	return New(append(fromCfg, opts...)...)
}
