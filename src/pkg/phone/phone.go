package phone

// Carrier prefixes accepted for bundle delivery. Numbers are local-format
// MSISDNs, exactly 10 digits with a 3-digit network prefix.
var allowedPrefixes = map[string]bool{
	// MTN
	"024": true,
	"025": true,
	"053": true,
	"054": true,
	"055": true,
	"059": true,
	// Telecel
	"020": true,
	"050": true,
	// AirtelTigo
	"026": true,
	"027": true,
	"056": true,
	"057": true,
}

func Valid(msisdn string) bool {
	if len(msisdn) != 10 {
		return false
	}
	for _, r := range msisdn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return allowedPrefixes[msisdn[:3]]
}
