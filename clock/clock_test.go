package clock_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/ls8/clock"
)

var _ = Describe("Clock", func() {
	var (
		clk *clock.Clock
	)

	BeforeEach(func() {
		clk = clock.New(1000)
	})

	AfterEach(func() {
		clk.Stop()
	})

	It("should derive the period from the rate", func() {
		Expect(clk.Period).To(Equal(time.Millisecond))
		Expect(clock.New(0).Period).To(Equal(time.Second / clock.DEFAULT_HZ))
	})

	It("should stop when the tick reports done", func() {
		var count atomic.Int32
		err := clk.Start(context.Background(), func() (bool, error) {
			return count.Add(1) == 5, nil
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(clk.Wait()).To(Succeed())
		Expect(count.Load()).To(Equal(int32(5)))
		Expect(clk.Ticks()).To(Equal(5))
		Expect(clk.Running()).To(BeFalse())
	})

	It("should stop and report a tick error", func() {
		boom := errors.New("boom")
		var count atomic.Int32
		err := clk.Start(context.Background(), func() (bool, error) {
			count.Add(1)
			return false, boom
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(clk.Wait()).To(MatchError(boom))
		Expect(count.Load()).To(Equal(int32(1)))
	})

	It("should never run ticks concurrently", func() {
		var active, overlap, count atomic.Int32
		err := clk.Start(context.Background(), func() (bool, error) {
			if active.Add(1) > 1 {
				overlap.Add(1)
			}
			time.Sleep(3 * time.Millisecond)
			active.Add(-1)
			return count.Add(1) == 10, nil
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(clk.Wait()).To(Succeed())
		Expect(overlap.Load()).To(BeZero())
	})

	It("should refuse a second start while running", func() {
		err := clk.Start(context.Background(), func() (bool, error) {
			return false, nil
		})
		Expect(err).NotTo(HaveOccurred())

		err = clk.Start(context.Background(), func() (bool, error) {
			return false, nil
		})
		Expect(err).To(MatchError(clock.ErrRunning))
	})

	It("should schedule no ticks after Stop", func() {
		var count atomic.Int32
		err := clk.Start(context.Background(), func() (bool, error) {
			count.Add(1)
			return false, nil
		})
		Expect(err).NotTo(HaveOccurred())

		Eventually(count.Load).Should(BeNumerically(">", 2))

		clk.Stop()
		Expect(clk.Running()).To(BeFalse())

		stopped := count.Load()
		Consistently(count.Load, 20*time.Millisecond).Should(Equal(stopped))
	})

	It("should stop when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		err := clk.Start(ctx, func() (bool, error) {
			return false, nil
		})
		Expect(err).NotTo(HaveOccurred())

		cancel()
		Expect(clk.Wait()).To(Succeed())
		Expect(clk.Running()).To(BeFalse())
	})

	It("should restart after stopping", func() {
		err := clk.Start(context.Background(), func() (bool, error) {
			return true, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(clk.Wait()).To(Succeed())

		err = clk.Start(context.Background(), func() (bool, error) {
			return true, nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(clk.Wait()).To(Succeed())
		Expect(clk.Ticks()).To(Equal(1))
	})

	It("should reject a non-positive period", func() {
		clk.Period = 0
		err := clk.Start(context.Background(), func() (bool, error) {
			return true, nil
		})
		Expect(err).To(MatchError(clock.ErrPeriod))
	})

	It("should do nothing on Stop or Wait before Start", func() {
		idle := clock.New(10)
		idle.Stop()
		Expect(idle.Wait()).To(Succeed())
	})
})
