package plan

import (
	"strconv"
	"strings"
)

// Unit naming is a pure function over ordered module identifier lists:
// identical member sets always derive identical names.

// normalizeToken lowercases s and collapses every run of separators or
// punctuation into a single hyphen. Returns "" if nothing usable remains.
func normalizeToken(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// baseName returns the last dotted segment of a module identifier.
func baseName(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// parentPackage returns the immediate package of a module identifier,
// or "" for top-level modules.
func parentPackage(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return ""
}

// commonPrefix returns the longest common dotted-path prefix of the ids.
func commonPrefix(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	prefix := strings.Split(ids[0], ".")
	for _, id := range ids[1:] {
		segs := strings.Split(id, ".")
		n := 0
		for n < len(prefix) && n < len(segs) && prefix[n] == segs[n] {
			n++
		}
		prefix = prefix[:n]
		if len(prefix) == 0 {
			break
		}
	}
	return prefix
}

// lastTwoJoined joins the final two path segments with a hyphen and
// normalizes the result.
func lastTwoJoined(segs []string) string {
	if len(segs) >= 2 {
		return normalizeToken(segs[len(segs)-2] + "-" + segs[len(segs)-1])
	}
	if len(segs) == 1 {
		return normalizeToken(segs[0])
	}
	return ""
}

// clusterName derives a unit name for a cyclic cluster: the last two
// segments of the members' longest common path prefix, falling back to
// the first member's base name, then the literal "unit".
func clusterName(members []string) string {
	if name := lastTwoJoined(commonPrefix(members)); name != "" {
		return name
	}
	if len(members) > 0 {
		if name := normalizeToken(baseName(members[0])); name != "" {
			return name
		}
	}
	return "unit"
}

// packageUnitName derives a unit name for a batch of singleton modules
// sharing the package pkg. Top-level modules (empty pkg) fall back to the
// first member's base name.
func packageUnitName(pkg string, members []string) string {
	if pkg != "" {
		if name := lastTwoJoined(strings.Split(pkg, ".")); name != "" {
			return name
		}
	}
	if len(members) > 0 {
		if name := normalizeToken(baseName(members[0])); name != "" {
			return name
		}
	}
	return "unit"
}

// namer hands out unique unit names. Derived names can collide (two
// unrelated clusters may share a base name); collisions get a stable
// numeric suffix in formation order.
type namer struct {
	taken map[string]bool
}

func newNamer() *namer {
	return &namer{taken: make(map[string]bool)}
}

func (n *namer) unique(name string) string {
	if !n.taken[name] {
		n.taken[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "-" + strconv.Itoa(i)
		if !n.taken[candidate] {
			n.taken[candidate] = true
			return candidate
		}
	}
}
