package splash

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	importWorkers = 10
	maxAssetSize  = 16 << (10 * 2)
)

func isAsset(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bmp", ".qoi":
		return true
	}
	return false
}

func (db *AssetDB) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isAsset(file) {
				return nil
			}

			if info.Size() > maxAssetSize {
				db.logger.Printf("splash: skipping %q, too large", file)
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// fileWorker decodes and compresses each file, anything that doesn't decode
// is logged and dropped.
func (db *AssetDB) fileWorker(ctx context.Context, in <-chan string, out chan<- *entry, wg *sync.WaitGroup) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for file := range in {
			b, err := os.ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

			e, err := db.prepare(name, b)
			if err != nil {
				db.logger.Printf("splash: skipping %q: %v", file, err)
				continue
			}

			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

// storeWorker is the only writer so concurrent imports never contend for
// the database lock. Once ctx is cancelled the remaining entries are
// drained without being stored.
func (db *AssetDB) storeWorker(ctx context.Context, in <-chan *entry, count *int) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for e := range in {
			if ctx.Err() != nil {
				continue
			}
			if err := db.store(e); err != nil {
				errc <- err
				// Drain so the file workers can finish
				for range in {
				}
				return
			}
			*count++
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage. It cancels the
// pipeline on that error but only returns once every stage has exited.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import adds every .bmp and .qoi file found under path, each named after
// its file name without the extension. Hidden files and directories are
// skipped, as is any file that fails to decode. It returns the number of
// assets added or updated.
func (db *AssetDB) Import(path string) (int, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := db.findFiles(ctx, dir)
	if err != nil {
		return 0, err
	}
	errcList = append(errcList, errc)

	entries := make(chan *entry)

	var wg sync.WaitGroup
	wg.Add(importWorkers)
	for i := 0; i < importWorkers; i++ {
		errc, err := db.fileWorker(ctx, files, entries, &wg)
		if err != nil {
			return 0, err
		}
		errcList = append(errcList, errc)
	}
	go func() {
		wg.Wait()
		close(entries)
	}()

	var count int
	errc, err = db.storeWorker(ctx, entries, &count)
	if err != nil {
		return 0, err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return 0, err
	}

	return count, nil
}
