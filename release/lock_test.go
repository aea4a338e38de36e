package release

import (
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTagLocks(t *testing.T) {
	Convey("Given tag locks", t, func() {
		locks := newTagLocks()

		Convey("Holders of one tag never overlap", func() {
			var active, peak int32
			var wg sync.WaitGroup

			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					unlock := locks.lock("v1.0")
					defer unlock()

					n := atomic.AddInt32(&active, 1)
					for {
						p := atomic.LoadInt32(&peak)
						if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
							break
						}
					}
					atomic.AddInt32(&active, -1)
				}()
			}
			wg.Wait()

			So(peak, ShouldEqual, 1)
			So(locks.size(), ShouldEqual, 0)
		})

		Convey("Different tags do not block each other", func() {
			unlock := locks.lock("v1.0")
			defer unlock()

			done := make(chan struct{})
			go func() {
				locks.lock("v1.1")()
				close(done)
			}()
			<-done

			So(locks.size(), ShouldEqual, 1)
		})

		Convey("Unlocking twice is harmless", func() {
			unlock := locks.lock("v1.0")
			unlock()
			unlock()
			So(locks.size(), ShouldEqual, 0)
		})
	})
}
