package config

import "strings"

// envReplacer turns nested keys into variable names: http.addr becomes
// ASSETDESK_HTTP_ADDR.
var envReplacer = strings.NewReplacer(".", "_", "-", "_")
