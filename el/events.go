// This file re-exports vdom event helpers for the el package.
package el

import "github.com/pulseframework/pulse/pkg/vdom"

func OnClick(handler any) EventHandler {
	return vdom.OnClick(handler)
}
func OnDblClick(handler any) EventHandler {
	return vdom.OnDblClick(handler)
}
func OnMouseDown(handler any) EventHandler {
	return vdom.OnMouseDown(handler)
}
func OnMouseUp(handler any) EventHandler {
	return vdom.OnMouseUp(handler)
}
func OnMouseMove(handler any) EventHandler {
	return vdom.OnMouseMove(handler)
}
func OnMouseEnter(handler any) EventHandler {
	return vdom.OnMouseEnter(handler)
}
func OnMouseLeave(handler any) EventHandler {
	return vdom.OnMouseLeave(handler)
}
func OnMouseOver(handler any) EventHandler {
	return vdom.OnMouseOver(handler)
}
func OnMouseOut(handler any) EventHandler {
	return vdom.OnMouseOut(handler)
}
func OnContextMenu(handler any) EventHandler {
	return vdom.OnContextMenu(handler)
}
func OnWheel(handler any) EventHandler {
	return vdom.OnWheel(handler)
}
func OnKeyDown(handler any) EventHandler {
	return vdom.OnKeyDown(handler)
}
func OnKeyUp(handler any) EventHandler {
	return vdom.OnKeyUp(handler)
}
func OnKeyPress(handler any) EventHandler {
	return vdom.OnKeyPress(handler)
}
func OnInput(handler any) EventHandler {
	return vdom.OnInput(handler)
}
func OnChange(handler any) EventHandler {
	return vdom.OnChange(handler)
}
func OnSubmit(handler any) EventHandler {
	return vdom.OnSubmit(handler)
}
func OnFocus(handler any) EventHandler {
	return vdom.OnFocus(handler)
}
func OnBlur(handler any) EventHandler {
	return vdom.OnBlur(handler)
}
func OnFocusIn(handler any) EventHandler {
	return vdom.OnFocusIn(handler)
}
func OnFocusOut(handler any) EventHandler {
	return vdom.OnFocusOut(handler)
}
func OnSelect(handler any) EventHandler {
	return vdom.OnSelect(handler)
}
func OnInvalid(handler any) EventHandler {
	return vdom.OnInvalid(handler)
}
func OnReset(handler any) EventHandler {
	return vdom.OnReset(handler)
}
func OnDragStart(handler any) EventHandler {
	return vdom.OnDragStart(handler)
}
func OnDrag(handler any) EventHandler {
	return vdom.OnDrag(handler)
}
func OnDragEnd(handler any) EventHandler {
	return vdom.OnDragEnd(handler)
}
func OnDragEnter(handler any) EventHandler {
	return vdom.OnDragEnter(handler)
}
func OnDragOver(handler any) EventHandler {
	return vdom.OnDragOver(handler)
}
func OnDragLeave(handler any) EventHandler {
	return vdom.OnDragLeave(handler)
}
func OnDrop(handler any) EventHandler {
	return vdom.OnDrop(handler)
}
func OnTouchStart(handler any) EventHandler {
	return vdom.OnTouchStart(handler)
}
func OnTouchMove(handler any) EventHandler {
	return vdom.OnTouchMove(handler)
}
func OnTouchEnd(handler any) EventHandler {
	return vdom.OnTouchEnd(handler)
}
func OnTouchCancel(handler any) EventHandler {
	return vdom.OnTouchCancel(handler)
}
func OnPointerDown(handler any) EventHandler {
	return vdom.OnPointerDown(handler)
}
func OnPointerUp(handler any) EventHandler {
	return vdom.OnPointerUp(handler)
}
func OnPointerMove(handler any) EventHandler {
	return vdom.OnPointerMove(handler)
}
func OnPointerEnter(handler any) EventHandler {
	return vdom.OnPointerEnter(handler)
}
func OnPointerLeave(handler any) EventHandler {
	return vdom.OnPointerLeave(handler)
}
func OnPointerCancel(handler any) EventHandler {
	return vdom.OnPointerCancel(handler)
}
func OnScroll(handler any) EventHandler {
	return vdom.OnScroll(handler)
}
func OnScrollEnd(handler any) EventHandler {
	return vdom.OnScrollEnd(handler)
}
func OnPlay(handler any) EventHandler {
	return vdom.OnPlay(handler)
}
func OnPause(handler any) EventHandler {
	return vdom.OnPause(handler)
}
func OnEnded(handler any) EventHandler {
	return vdom.OnEnded(handler)
}
func OnTimeUpdate(handler any) EventHandler {
	return vdom.OnTimeUpdate(handler)
}
func OnLoadStart(handler any) EventHandler {
	return vdom.OnLoadStart(handler)
}
func OnLoadedData(handler any) EventHandler {
	return vdom.OnLoadedData(handler)
}
func OnLoadedMetadata(handler any) EventHandler {
	return vdom.OnLoadedMetadata(handler)
}
func OnCanPlay(handler any) EventHandler {
	return vdom.OnCanPlay(handler)
}
func OnCanPlayThrough(handler any) EventHandler {
	return vdom.OnCanPlayThrough(handler)
}
func OnProgress(handler any) EventHandler {
	return vdom.OnProgress(handler)
}
func OnSeeking(handler any) EventHandler {
	return vdom.OnSeeking(handler)
}
func OnSeeked(handler any) EventHandler {
	return vdom.OnSeeked(handler)
}
func OnVolumeChange(handler any) EventHandler {
	return vdom.OnVolumeChange(handler)
}
func OnRateChange(handler any) EventHandler {
	return vdom.OnRateChange(handler)
}
func OnDurationChange(handler any) EventHandler {
	return vdom.OnDurationChange(handler)
}
func OnWaiting(handler any) EventHandler {
	return vdom.OnWaiting(handler)
}
func OnPlaying(handler any) EventHandler {
	return vdom.OnPlaying(handler)
}
func OnStalled(handler any) EventHandler {
	return vdom.OnStalled(handler)
}
func OnSuspend(handler any) EventHandler {
	return vdom.OnSuspend(handler)
}
func OnEmptied(handler any) EventHandler {
	return vdom.OnEmptied(handler)
}
func OnError(handler any) EventHandler {
	return vdom.OnError(handler)
}
func OnLoad(handler any) EventHandler {
	return vdom.OnLoad(handler)
}
func OnAbort(handler any) EventHandler {
	return vdom.OnAbort(handler)
}
func OnAnimationStart(handler any) EventHandler {
	return vdom.OnAnimationStart(handler)
}
func OnAnimationEnd(handler any) EventHandler {
	return vdom.OnAnimationEnd(handler)
}
func OnAnimationIteration(handler any) EventHandler {
	return vdom.OnAnimationIteration(handler)
}
func OnAnimationCancel(handler any) EventHandler {
	return vdom.OnAnimationCancel(handler)
}
func OnTransitionStart(handler any) EventHandler {
	return vdom.OnTransitionStart(handler)
}
func OnTransitionEnd(handler any) EventHandler {
	return vdom.OnTransitionEnd(handler)
}
func OnTransitionRun(handler any) EventHandler {
	return vdom.OnTransitionRun(handler)
}
func OnTransitionCancel(handler any) EventHandler {
	return vdom.OnTransitionCancel(handler)
}
func OnCopy(handler any) EventHandler {
	return vdom.OnCopy(handler)
}
func OnCut(handler any) EventHandler {
	return vdom.OnCut(handler)
}
func OnPaste(handler any) EventHandler {
	return vdom.OnPaste(handler)
}
func OnToggle(handler any) EventHandler {
	return vdom.OnToggle(handler)
}
