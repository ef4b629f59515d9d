// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Log settings
var Log = struct {
	Level  string
	Format string
}{
	Level:  "info",
	Format: "auto",
}

// Server settings
var Server = struct {
	HTTPAddr string
	// CORSAllowedOrigins enables CORS on the asset routes when not empty.
	CORSAllowedOrigins []string
}{
	HTTPAddr: "127.0.0.1:3000",
}

// LoadSettingsFrom loads every known section from rootCfg.
func LoadSettingsFrom(rootCfg ConfigProvider) error {
	loadLogFrom(rootCfg)
	loadServerFrom(rootCfg)
	return loadViteFrom(rootCfg)
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = sec.Key("LEVEL").MustString("info")
	Log.Format = sec.Key("FORMAT").In("auto", []string{"auto", "text", "json"})
}

func loadServerFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("server")
	Server.HTTPAddr = sec.Key("HTTP_ADDR").MustString("127.0.0.1:3000")
	Server.CORSAllowedOrigins = nil
	for _, origin := range sec.Key("CORS_ALLOWED_ORIGINS").Strings(",") {
		if origin != "" {
			Server.CORSAllowedOrigins = append(Server.CORSAllowedOrigins, origin)
		}
	}
}
