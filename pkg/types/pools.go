package types

// Pool describes a liquidity pool known to the aggregator. Reserves are
// stroop decimal strings.
type Pool struct {
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	TokenA   string `json:"tokenA"`
	TokenB   string `json:"tokenB"`
	ReserveA string `json:"reserveA"`
	ReserveB string `json:"reserveB"`
	LedgerNo int64  `json:"ledgerNo"`
}

// Asset list curators recognized by the aggregator.
const (
	AssetListSoroswap      = "SOROSWAP"
	AssetListAqua          = "AQUA"
	AssetListStellarExpert = "STELLAR_EXPERT"
	AssetListLobstr        = "LOBSTR"
)

// CuratorNames lists the recognized asset-list curators.
func CuratorNames() []string {
	return []string{AssetListSoroswap, AssetListAqua, AssetListStellarExpert, AssetListLobstr}
}

// KnownCurator reports whether name is a recognized asset-list curator.
func KnownCurator(name string) bool {
	for _, c := range CuratorNames() {
		if name == c {
			return true
		}
	}
	return false
}
