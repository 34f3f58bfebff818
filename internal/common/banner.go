package common

import (
	"fmt"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner followed by the listening address
func PrintBanner(config *Config) {
	banner.Print("DocVegas", GetVersion())
	fmt.Printf("  listening on http://%s:%d  (search: %s, llm: %s)\n\n",
		config.Server.Host, config.Server.Port, config.Search.Provider, config.LLM.DefaultProvider)
}
