package xsched

// Canceller 取消入口，同时作用于延迟任务表与周期任务表。
// CancelAll 限定在绑定模式内；Cancel 与 Exists 只按 id 查找，不区分模式。
type Canceller struct {
	mode     Mode
	registry *Registry
}

// Mode 返回绑定的执行模式。
func (c *Canceller) Mode() Mode {
	return c.mode
}

// CancelAll 取消并清空绑定模式下两张表的全部任务。
func (c *Canceller) CancelAll() {
	c.registry.Periodic().CancelAll(c.mode)
	c.registry.Delayed().CancelAll(c.mode)
}

// Cancel 按 id 取消任务，不区分模式。两张表都会尝试，
// 每张表内先查异步再查同步，见 [JobTable.CancelByID]。任一张表命中即返回 true。
func (c *Canceller) Cancel(id string) bool {
	periodic := c.registry.Periodic().CancelByID(id)
	delayed := c.registry.Delayed().CancelByID(id)
	return periodic || delayed
}

// Exists 报告 id 是否存在于任一张表，不区分模式。
func (c *Canceller) Exists(id string) bool {
	return c.registry.Exists(id)
}
