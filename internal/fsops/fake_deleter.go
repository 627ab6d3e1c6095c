package fsops

// FakeDeleter implements Deleter for testing
// Records all delete calls without performing actual deletions.
// Failures can be injected per path to exercise retry behavior.
type FakeDeleter struct {
	Calls []string

	// RemoveErrs maps a path to the error its Remove call should return
	RemoveErrs map[string]error
	// RemoveAllErrs maps a path to the error its RemoveAll call should return
	RemoveAllErrs map[string]error
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	if err, ok := f.RemoveErrs[path]; ok {
		return err
	}
	return nil
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	if err, ok := f.RemoveAllErrs[path]; ok {
		return err
	}
	return nil
}
