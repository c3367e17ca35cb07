package xhost_test

import (
	"context"
	"fmt"
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

func ExampleToTicks() {
	fmt.Println(xhost.ToTicks(time.Second))
	fmt.Println(xhost.ToTicks(250 * time.Millisecond))
	fmt.Println(xhost.ToTicks(1250 * time.Millisecond))

	// Output:
	// 20
	// 5
	// 25
}

func ExampleTickHost_manual() {
	// 手动模式：不启动任何 goroutine，由 Advance 推进
	host, err := xhost.New(xhost.WithManualTick())
	if err != nil {
		panic(err)
	}
	defer func() { _ = host.Stop(context.Background()) }()

	h, err := host.SubmitPeriodic(xhost.ModeSync, func() {
		fmt.Println("fire at tick", host.CurrentTick())
	}, 1, 2)
	if err != nil {
		panic(err)
	}

	_ = host.Advance(5)
	h.Cancel()
	_ = host.Advance(5)

	// Output:
	// fire at tick 1
	// fire at tick 3
	// fire at tick 5
}
