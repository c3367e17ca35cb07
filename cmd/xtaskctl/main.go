// xtaskctl 是 xsched 调度组件的命令行工具。
//
// 用法:
//
//	xtaskctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   调度配置文件（yaml/json），缺省使用默认配置
//
// 命令:
//
//	ticks <时长...>       打印时长换算后的 tick 数
//	validate --plan FILE  校验任务计划
//	run --plan FILE       按计划提交任务并运行宿主
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	xtaskctl ticks 1s 250ms
//	xtaskctl -c xtask.yaml validate --plan plan.yaml
//	xtaskctl -c xtask.yaml run --plan plan.yaml --for 30s
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xtaskctl",
		Usage:   "xsched 调度组件命令行工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "调度配置文件路径（yaml/json）",
			},
		},
		Commands: createCommands(),
		// 由 run 统一映射退出码，不让 cli 直接 os.Exit
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func run(args []string) int {
	// 信号由 run 命令内的 xrun 处理
	app := createApp()
	if err := app.Run(context.Background(), args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
