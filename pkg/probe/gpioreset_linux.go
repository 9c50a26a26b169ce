//go:build linux

package probe

import "github.com/warthog618/go-gpiocdev"

func requestOutput(chip string, offset int) (outputLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1))
	if err != nil {
		return nil, err
	}
	return line, nil
}
