package model

// Config holds the application configuration settings.
type Config struct {
	DatabaseDir    string `json:"databaseDir"`
	DatabaseFile   string `json:"databaseFile"`
	DatabaseType   string `json:"databaseType"`
	LogFolder      string `json:"logFolder"`
	CommandLog     string `json:"commandLog"`
	ErrorLog       string `json:"errorLog"`
	InfoLog        string `json:"infoLog"`
	BackendURL     string `json:"backendURL"`
	BackendTimeout int    `json:"backendTimeoutSeconds"`
}
