package main

import (
	"crypto/ecdsa"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"msigdash/pkg/chains"
	"msigdash/pkg/config"
	"msigdash/pkg/i18n"
	"msigdash/pkg/server"
	"msigdash/pkg/session"
	"msigdash/pkg/tui"
)

// Version should be set during build
var Version = "dev"

func main() {
	prefsFlag := flag.String("prefs", "", "Path to preferences file")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	serverFlag := flag.Bool("server", false, "Run in headless server mode")
	portFlag := flag.Int("port", 8080, "Port for API server")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("msigdash version %s\n", Version)
		os.Exit(0)
	}

	boot := config.FromEnv()

	prefsPath, err := config.PrefsPath(*prefsFlag)
	if err != nil {
		// No home directory; run with in-memory preferences.
		prefsPath = ""
	}
	prefs := config.Preferences{}
	if prefsPath != "" {
		prefs = config.LoadPreferences(prefsPath)
	}
	language := i18n.Resolve(prefs.Language)

	var key *ecdsa.PrivateKey
	if boot.PrivateKey != "" {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(boot.PrivateKey, "0x"))
		if err != nil {
			fmt.Printf("Error parsing PRIVATE_KEY: %v\n", err)
			os.Exit(1)
		}
	}

	sess := session.New(key)

	srv := server.NewServer(sess)
	go func() {
		if err := srv.Start(*portFlag); err != nil {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	if *serverFlag {
		network := chains.Resolve(boot.ChainID, boot.RPCURL)
		if err := sess.Configure(network, boot.RPCURL, boot.ContractAddress); err != nil {
			fmt.Printf("Error connecting to %s: %v\n", network.Endpoint(boot.RPCURL), err)
			os.Exit(1)
		}
		fmt.Printf("Running in server mode on port %d...\n", *portFlag)
		select {} // Keep alive
	}

	tui.Start(sess, boot, language, prefsPath, Version)
}
