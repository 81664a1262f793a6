package cli

import (
	"fmt"

	"github.com/diillson/retail-sales-dashboard-go/pkg/console"
)

const banner = `
  ____      _        _ _   ____        _
 |  _ \ ___| |_ __ _(_) | / ___|  __ _| | ___  ___
 | |_) / _ \ __/ _' | | | \___ \ / _' | |/ _ \/ __|
 |  _ <  __/ || (_| | | |  ___) | (_| | |  __/\__ \
 |_| \_\___|\__\__,_|_|_| |____/ \__,_|_|\___||___/
`

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	fmt.Println(console.BrightMagenta(banner))
	fmt.Println(console.BrightCyan(welcomeLine(versionStr)))
}

func welcomeLine(versionStr string) string {
	return fmt.Sprintf("Retail Sales Dashboard CLI (v%s)", versionStr)
}
