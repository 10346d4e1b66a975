// Command wapi manages wireless interfaces using Wireless Extensions and
// nl80211.
package main

import "github.com/mdlayher/wapi/cmd/wapi/cmd"

func main() {
	cmd.Execute()
}
