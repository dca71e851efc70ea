package broadcaster

import (
	"fmt"
	"sort"
)

func makeError(errors map[string]error) error {
	if len(errors) == 0 {
		return nil
	}
	keys := make([]string, 0, len(errors))
	for key := range errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	errStr := ""
	for _, key := range keys {
		errStr += fmt.Sprintf("%s(%s).", key, errors[key].Error())
	}
	return fmt.Errorf("%s", errStr)
}
