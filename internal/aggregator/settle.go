package aggregator

import "sync"

// SettleAll runs every task concurrently and waits for all of them to reach
// a terminal state, returning each task's error by position. Unlike a
// fail-fast join, a slow or failing task never cancels or stalls its
// siblings.
func SettleAll(tasks ...func() error) []error {
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task func() error) {
			defer wg.Done()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()

	return errs
}
