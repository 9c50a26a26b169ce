//go:build !linux

package probe

import "errors"

func requestOutput(string, int) (outputLine, error) {
	return nil, errors.New("gpio character device requires linux")
}
