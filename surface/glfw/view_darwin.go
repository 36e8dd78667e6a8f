//go:build darwin

package glfw

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void* content_view(void* window) {
	return (void*)[(NSWindow*)window contentView];
}
*/
import "C"

import "unsafe"

func contentView(nsWindow unsafe.Pointer) uintptr {
	if nsWindow == nil {
		return 0
	}
	return uintptr(C.content_view(nsWindow))
}
