// Package xlru 提供带 TTL 的泛型 LRU 缓存，基于 github.com/hashicorp/golang-lru/v2/expirable。
//
// xtask 用它保存被同名任务覆盖下来的旧句柄（superseded handle），
// 使调用方在注册表覆盖后仍有机会找回并取消旧任务。
//
// # 配置
//
//   - Size：最大条目数，必须 > 0 且 ≤ 16,777,216
//   - TTL：条目过期时间，0 表示永不过期（此时不启动后台清理 goroutine）
//
// # 注意事项
//
//   - TTL > 0 时底层库会启动清理 goroutine，使用完毕必须调用 Close
//   - Close 通过 reflect+unsafe 关闭底层库未导出的 done 通道，升级 golang-lru 时需验证
//   - 淘汰回调在底层锁内执行，回调中不得调用 Cache 自身方法
package xlru
