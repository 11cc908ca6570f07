package database

// Config holds configuration for the font index cache database.
type Config struct {
	// Enabled turns the persistent cache on. Without it the index lives in memory only.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the sqlite database file, or ":memory:".
	Path string `mapstructure:"path" default:"~/.cache/font-helper/index.db"`
	// Host is the MySQL host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the MySQL port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the MySQL user.
	User string `mapstructure:"user" default:"root"`
	// Password is the MySQL password.
	Password string `mapstructure:"password" default:""`
	// Name is the MySQL database name.
	Name string `mapstructure:"name" default:"font_helper"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
