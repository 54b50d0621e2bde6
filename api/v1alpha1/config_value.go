/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ConfigValue holds one topic configuration entry as the user wrote it:
// a scalar (string, bool, number) or a list of scalars. Kafka's admin API
// only accepts strings, so String renders either shape into the wire form
// (spec.md §4.5); any other JSON kind is preserved here and rejected as
// InvalidResource only when it is actually needed, not at unmarshal time.
type ConfigValue struct {
	scalar   string
	isScalar bool
	list     []string
	isList   bool
	invalid  json.RawMessage
}

func (c ConfigValue) MarshalJSON() ([]byte, error) {
	switch {
	case c.isScalar:
		return json.Marshal(c.scalar)
	case c.isList:
		return json.Marshal(c.list)
	case c.invalid != nil:
		return c.invalid, nil
	default:
		return []byte("null"), nil
	}
}

func (c *ConfigValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ConfigValue{scalar: s, isScalar: true}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = ConfigValue{scalar: strconv.FormatBool(b), isScalar: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = ConfigValue{scalar: formatNumber(f), isScalar: true}
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		items := make([]string, 0, len(list))
		allScalar := true
		for _, elem := range list {
			var one ConfigValue
			if err := one.UnmarshalJSON(elem); err != nil || !one.isScalar {
				allScalar = false
				break
			}
			items = append(items, one.scalar)
		}
		if allScalar {
			*c = ConfigValue{list: items, isList: true}
			return nil
		}
	}
	*c = ConfigValue{invalid: append(json.RawMessage(nil), data...)}
	return nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsValid reports whether this value is a scalar or a list of scalars, the
// only two shapes Kafka's admin API can express.
func (c ConfigValue) IsValid() bool {
	return c.isScalar || c.isList
}

// String renders the value as Kafka's admin API expects it: a scalar
// unchanged, a list joined by commas (spec.md §4.5). Callers must check
// IsValid first; String panics on an invalid value to surface a programming
// error rather than silently send a malformed request.
func (c ConfigValue) String() string {
	switch {
	case c.isScalar:
		return c.scalar
	case c.isList:
		return strings.Join(c.list, ",")
	default:
		panic(fmt.Sprintf("ConfigValue.String called on invalid value %s", string(c.invalid)))
	}
}

// StringConfigValue builds a scalar ConfigValue, for tests and defaulting.
func StringConfigValue(s string) ConfigValue {
	return ConfigValue{scalar: s, isScalar: true}
}

// ListConfigValue builds a list ConfigValue, for tests and defaulting.
func ListConfigValue(items ...string) ConfigValue {
	return ConfigValue{list: items, isList: true}
}

// DeepCopy returns a copy of c with its backing slices/bytes cloned.
func (c ConfigValue) DeepCopy() ConfigValue {
	out := c
	if c.list != nil {
		out.list = append([]string(nil), c.list...)
	}
	if c.invalid != nil {
		out.invalid = append(json.RawMessage(nil), c.invalid...)
	}
	return out
}
