package codegen

import "fmt"

// Merge combines browser_protocol.json and js_protocol.json (or any set of
// same-version schema documents) into one domain list. CDP ships the two
// halves of its schema as separate files sharing one protocol version;
// mismatched versions mean the files were not downloaded as a matched pair.
func Merge(protocols ...*Protocol) ([]Domain, error) {
	if len(protocols) == 0 {
		return nil, fmt.Errorf("codegen: merge: no protocols given")
	}
	major, minor := protocols[0].Version.Major, protocols[0].Version.Minor
	var domains []Domain
	for _, p := range protocols {
		if p.Version.Major != major || p.Version.Minor != minor {
			return nil, fmt.Errorf("codegen: merge: version mismatch: %s.%s vs %s.%s",
				major, minor, p.Version.Major, p.Version.Minor)
		}
		domains = append(domains, p.Domains...)
	}
	return domains, nil
}
