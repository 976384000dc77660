package mobius

// OnAcceptFunc is called for every effect entering the router, before
// it is offered to any handler. Use this to attach logging or metrics
// without coupling handlers to an observability system.
type OnAcceptFunc func(effect any)

// OnUnknownEffectFunc is called when an effect matches no registered
// handler, just before the router fails with UnknownEffectError. The
// hook observes the failure; it cannot suppress it.
type OnUnknownEffectFunc func(effect any)

// OnDisposeFunc is called once, when the router's connection is
// disposed for the first time. Repeated Dispose calls do not re-fire
// the hook.
type OnDisposeFunc func()

// hooks holds all configured hook functions.
type hooks struct {
	onAccept        []OnAcceptFunc
	onUnknownEffect []OnUnknownEffectFunc
	onDispose       []OnDisposeFunc
}

// Option configures a RouterBuilder.
type Option func(*config)

// WithOnAccept adds a hook called for every effect entering the router.
// Multiple hooks are called in order.
//
// Example:
//
//	mobius.WithOnAccept(func(effect any) {
//	    metrics.Incr("effects.accepted", fmt.Sprintf("type:%T", effect))
//	})
func WithOnAccept(fn OnAcceptFunc) Option {
	return func(c *config) {
		c.hooks.onAccept = append(c.hooks.onAccept, fn)
	}
}

// WithOnUnknownEffect adds a hook called when an effect matches no
// registered handler, before the router fails. Multiple hooks are
// called in order.
//
// Example:
//
//	mobius.WithOnUnknownEffect(func(effect any) {
//	    logger.Error("unroutable effect", zap.Any("effect", effect))
//	})
func WithOnUnknownEffect(fn OnUnknownEffectFunc) Option {
	return func(c *config) {
		c.hooks.onUnknownEffect = append(c.hooks.onUnknownEffect, fn)
	}
}

// WithOnDispose adds a hook called once when the router's connection is
// disposed. Multiple hooks are called in order.
func WithOnDispose(fn OnDisposeFunc) Option {
	return func(c *config) {
		c.hooks.onDispose = append(c.hooks.onDispose, fn)
	}
}
