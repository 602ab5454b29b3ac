package config

const (
	defaultListen           = "127.0.0.1:50051"
	defaultHost             = "127.0.0.1"
	defaultPort             = 9987
	defaultNickname         = "tsvoice"
	defaultResourceDir      = "~/.local/share/tsvoice/ts3sdk"
	defaultLogDir           = "~/.local/share/tsvoice/logs"
	defaultIdentityFileName = "identity.txt"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			Listen: defaultListen,
		},
		Server: Server{
			Host:     defaultHost,
			Port:     defaultPort,
			Nickname: defaultNickname,
		},
		Paths: Paths{
			ResourceDir: defaultResourceDir,
			LogDir:      defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
