// Package nl80211 contains the subset of nl80211 definitions from
// linux/nl80211.h used to manage virtual interfaces.
//
// WARNING: THIS IS MANUALLY CREATED. KEEP VALUES IN SYNC WITH THE KERNEL UAPI
// HEADER RATHER THAN RENUMBERING.
package nl80211

// GenlName is the generic netlink family name of nl80211.
const GenlName = "nl80211"

// nl80211_commands enumeration.
const (
	CmdNewInterface = 7
	CmdDelInterface = 8
)

// nl80211_attrs enumeration.
const (
	AttrIfindex = 3
	AttrIfname  = 4
	AttrIftype  = 5
)

// nl80211_iftype enumeration.
const (
	IftypeUnspecified = iota
	IftypeAdhoc
	IftypeStation
	IftypeAP
	IftypeAPVlan
	IftypeWDS
	IftypeMonitor
	IftypeMeshPoint
)
