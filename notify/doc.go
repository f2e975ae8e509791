// Package notify houses concrete implementations of core.Notifier. Delivery
// is fire-and-forget from the orchestrator's perspective: implementations log
// failures themselves and the engine never treats a dispatch error as fatal.
//
// LogNotifier is the default; wire chat or email backends by implementing
// core.Notifier at the wiring layer.
package notify
