package cli

import _ "embed"

//go:embed default_config.yaml
var defaultConfigurationContent []byte
