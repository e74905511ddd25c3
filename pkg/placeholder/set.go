// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package placeholder

// A set is a plain slice kept distinct by Raw. None of the functions below
// mutate their arguments.

// 🧹 Distinct removes duplicate raws. The first occurrence keeps its position;
// if it is unresolved it takes the first later value found. A resolved entry
// is never overwritten.
func Distinct(set []Placeholder) []Placeholder {
	out := make([]Placeholder, 0, len(set))
	index := make(map[string]int, len(set))
	for _, p := range set {
		i, ok := index[p.Raw]
		if !ok {
			index[p.Raw] = len(out)
			out = append(out, p)
			continue
		}
		if !out[i].resolved && p.resolved {
			out[i] = out[i].WithValue(p.value)
		}
	}
	return out
}

// 🔀 Merge concatenates a and b and makes the result distinct.
func Merge(a, b []Placeholder) []Placeholder {
	all := make([]Placeholder, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return Distinct(all)
}

// 🤝 Reconcile copies resolved values from supplied into the matching entries
// of set. Supplied entries without a counterpart in set are ignored.
func Reconcile(set, supplied []Placeholder) []Placeholder {
	values := make(map[string]string, len(supplied))
	for _, s := range supplied {
		if !s.resolved {
			continue
		}
		if _, ok := values[s.Raw]; ok {
			continue
		}
		values[s.Raw] = s.value
	}

	out := make([]Placeholder, len(set))
	for i, p := range set {
		if v, ok := values[p.Raw]; ok {
			p = p.WithValue(v)
		}
		out[i] = p
	}
	return out
}

// Find returns the entry of set with the given raw.
func Find(set []Placeholder, raw string) (Placeholder, bool) {
	for _, p := range set {
		if p.Raw == raw {
			return p, true
		}
	}
	return Placeholder{}, false
}

// Unresolved returns the entries of set without a value.
func Unresolved(set []Placeholder) []Placeholder {
	var out []Placeholder
	for _, p := range set {
		if !p.resolved {
			out = append(out, p)
		}
	}
	return out
}

// MissingFrom returns the entries of set whose raw has no counterpart in reference.
func MissingFrom(set, reference []Placeholder) []Placeholder {
	known := make(map[string]struct{}, len(reference))
	for _, r := range reference {
		known[r.Raw] = struct{}{}
	}
	var out []Placeholder
	for _, p := range set {
		if _, ok := known[p.Raw]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the names of set in order.
func Names(set []Placeholder) []string {
	names := make([]string, len(set))
	for i, p := range set {
		names[i] = p.Name()
	}
	return names
}
