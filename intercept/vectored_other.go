//go:build !(windows && amd64)

package intercept

func addHandler() (uintptr, error) {
	return 0, ErrUnsupported
}

func removeHandler(uintptr) error {
	return ErrUnsupported
}
