package xsched_test

import (
	"context"
	"fmt"
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
	"github.com/omeyang/xtask/pkg/schedule/xsched"
)

func Example() {
	host, err := xhost.New(xhost.WithManualTick())
	if err != nil {
		panic(err)
	}
	defer func() { _ = host.Stop(context.Background()) }()

	reg, err := xsched.NewRegistry()
	if err != nil {
		panic(err)
	}
	defer reg.Close()

	sched, err := xsched.New(host, xsched.ModeSync, xsched.WithRegistry(reg))
	if err != nil {
		panic(err)
	}

	// 250ms 一次，持续 1250ms：共 5 次
	count := 0
	task, err := sched.Repeater().
		Task(func() { count++ }).
		Repeats(250 * time.Millisecond).
		RepeatsFor(1250 * time.Millisecond).
		UniqueID("blink").
		Run()
	if err != nil {
		panic(err)
	}

	_ = host.Advance(100)
	fmt.Println("runs:", count)
	fmt.Println("period:", task.RepeatPeriod())
	fmt.Println("cancelled:", task.IsCancelled())

	// Output:
	// runs: 5
	// period: 250ms
	// cancelled: true
}

func ExampleCanceller() {
	host, _ := xhost.New(xhost.WithManualTick())
	defer func() { _ = host.Stop(context.Background()) }()

	reg, _ := xsched.NewRegistry()
	defer reg.Close()

	sched, _ := xsched.New(host, xsched.ModeAsync, xsched.WithRegistry(reg))
	_, _ = sched.Later().
		Task(func() { fmt.Println("never printed") }).
		Delay(time.Second).
		UniqueID("reminder").
		Run()

	c := sched.Canceller()
	fmt.Println(c.Exists("reminder"))
	fmt.Println(c.Cancel("reminder"))
	fmt.Println(c.Exists("reminder"))
	_ = host.Advance(40)

	// Output:
	// true
	// true
	// false
}
