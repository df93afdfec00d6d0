package genbank

// Qualifier is a single '/key=value' pair of a feature. Qualifiers that
// have no value, like '/pseudo', keep an empty Value.
type Qualifier struct {
	Key   string
	Value string
}

// Qualifiers keeps feature qualifiers in their original order. The same
// key may appear many times, for example several '/note' entries.
type Qualifiers []Qualifier

// Add appends a qualifier.
func (q *Qualifiers) Add(key, value string) {
	*q = append(*q, Qualifier{Key: key, Value: value})
}

// Len returns the number of qualifiers, repeated keys included.
func (q Qualifiers) Len() int {
	return len(q)
}

// Has reports if a key is present.
func (q Qualifiers) Has(key string) bool {
	for _, v := range q {
		if v.Key == key {
			return true
		}
	}
	return false
}

// First returns the first value of a key.
func (q Qualifiers) First(key string) (string, bool) {
	for _, v := range q {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Values returns all values of a key in their original order.
func (q Qualifiers) Values(key string) []string {
	var res []string
	for _, v := range q {
		if v.Key == key {
			res = append(res, v.Value)
		}
	}
	return res
}

// Keys returns distinct keys in the order of their first appearance.
func (q Qualifiers) Keys() []string {
	seen := make(map[string]struct{}, len(q))
	var res []string
	for _, v := range q {
		if _, ok := seen[v.Key]; ok {
			continue
		}
		seen[v.Key] = struct{}{}
		res = append(res, v.Key)
	}
	return res
}
