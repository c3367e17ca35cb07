// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlru: 泛型 LRU 缓存，可选 TTL 过期
//   - xpool: 泛型 Worker Pool，可配置 worker/队列大小、优雅关闭
package util
