package session

import "slices"

// FlashKey is the data key holding flash bookkeeping.
const FlashKey = "_flash"

// FlashState tracks keys flashed during the current request (New) and
// during the previous one (Old).
type FlashState struct {
	New []string `json:"new"`
	Old []string `json:"old"`
}

func (f FlashState) clone() FlashState {
	return FlashState{
		New: append([]string{}, f.New...),
		Old: append([]string{}, f.Old...),
	}
}

func (f *FlashState) add(key string) {
	f.Old = slices.DeleteFunc(f.Old, func(k string) bool { return k == key })
	if !slices.Contains(f.New, key) {
		f.New = append(f.New, key)
	}
}

func (f *FlashState) remove(key string) {
	match := func(k string) bool { return k == key }
	f.New = slices.DeleteFunc(f.New, match)
	f.Old = slices.DeleteFunc(f.Old, match)
}

// flashStateOf normalises a stored bookkeeping value.
// Values that cannot be interpreted reset to an empty state.
func flashStateOf(v any) FlashState {
	switch fs := v.(type) {
	case FlashState:
		return fs.clone()
	case *FlashState:
		if fs == nil {
			break
		}
		return fs.clone()
	case map[string][]string:
		return FlashState{New: cleanKeys(fs["new"]), Old: cleanKeys(fs["old"])}
	case map[string]any:
		newKeys, okNew := keyList(fs["new"])
		oldKeys, okOld := keyList(fs["old"])
		if okNew && okOld {
			return FlashState{New: newKeys, Old: oldKeys}
		}
	}
	return FlashState{New: []string{}, Old: []string{}}
}

func keyList(v any) ([]string, bool) {
	switch list := v.(type) {
	case nil:
		return []string{}, true
	case []string:
		return cleanKeys(list), true
	case []any:
		keys := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			keys = append(keys, s)
		}
		return keys, true
	}
	return nil, false
}

func cleanKeys(keys []string) []string {
	return append([]string{}, keys...)
}
