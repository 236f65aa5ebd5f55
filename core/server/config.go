package server

// Config holds configuration for the HTTP server and application identity.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the administrative API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AppID is the application identity stamped into issued credentials as
	// both issuer and audience.
	AppID string `mapstructure:"app_id" default:"StoreFront-001"`
	// TokenSecret is the symmetric secret used to sign and verify API tokens.
	TokenSecret string `mapstructure:"token_secret" default:""`
	// WarehouseName is the remote name recorded in sync session history.
	WarehouseName string `mapstructure:"warehouse_name" default:"Warehouse"`
	// TokenMaxValidityDays caps how far in the future a credential may expire.
	TokenMaxValidityDays int `mapstructure:"token_max_validity_days" default:"60"`
}
