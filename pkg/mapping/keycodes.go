package mapping

// Linux input event keycodes (input-event-codes.h). Keycodes in a mapping
// file use this domain; the uinput sink passes them through unchanged. Only
// the codes referenced by the default mapping and the common gaming keys are
// named here, but any code up to 255 is accepted.
//
// Quick reference for mapping files:
//
//	letters:  a=30 b=48 c=46 d=32 e=18 f=33 g=34 h=35 i=23 j=36 k=37 l=38
//	          m=50 n=49 o=24 p=25 q=16 r=19 s=31 t=20 u=22 v=47 w=17 x=45
//	          y=21 z=44
//	digits:   1=2 2=3 3=4 4=5 5=6 6=7 7=8 8=9 9=10 0=11
//	special:  esc=1 tab=15 enter=28 space=57 backspace=14
//	mods:     leftctrl=29 leftshift=42 leftalt=56 rightshift=54 rightctrl=97
//	arrows:   up=103 down=108 left=105 right=106
//	function: f1=59 .. f10=68, f11=87 f12=88
const (
	KeyEsc   uint16 = 1
	KeyTab   uint16 = 15
	KeyQ     uint16 = 16
	KeyW     uint16 = 17
	KeyE     uint16 = 18
	KeyR     uint16 = 19
	KeyT     uint16 = 20
	KeyI     uint16 = 23
	KeyEnter uint16 = 28

	KeyLeftCtrl uint16 = 29
	KeyA        uint16 = 30
	KeyS        uint16 = 31
	KeyD        uint16 = 32
	KeyF        uint16 = 33
	KeyG        uint16 = 34
	KeyJ        uint16 = 36
	KeyK        uint16 = 37
	KeyL        uint16 = 38

	KeyLeftShift uint16 = 42
	KeyZ         uint16 = 44
	KeyX         uint16 = 45
	KeyC         uint16 = 46
	KeyV         uint16 = 47
	KeyB         uint16 = 48

	KeyLeftAlt uint16 = 56
	KeySpace   uint16 = 57

	KeyUp    uint16 = 103
	KeyLeft  uint16 = 105
	KeyRight uint16 = 106
	KeyDown  uint16 = 108
)

// MaxKeycode bounds the keycode domain tracked by the hold state.
const MaxKeycode = 255
