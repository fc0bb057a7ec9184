package rewrites

import "testing"

func TestInjectYields(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected string
	}{

		{
			name:     "no loops is identity",
			src:      "x = 1\nprint(x)\n",
			expected: "x = 1\nprint(x)\n",
		},

		{
			name:     "empty source",
			src:      "",
			expected: "",
		},

		{
			name: "while loop with indented body",
			src: "while True:\n" +
				"    led.on()\n",
			expected: "while True:\n" +
				"    machine.idle()\n" +
				"    led.on()\n",
		},

		{
			name: "for loop with indented body",
			src: "for i in range(10):\n" +
				"    print(i)\n",
			expected: "for i in range(10):\n" +
				"    machine.idle()\n" +
				"    print(i)\n",
		},

		{
			name:     "inline body untouched",
			src:      "while n < 3: n += 1\n",
			expected: "while n < 3: n += 1\n",
		},

		{
			name: "body deeper than one unit keeps its own indent",
			src: "while True:\n" +
				"        led.toggle()\n",
			expected: "while True:\n" +
				"        machine.idle()\n" +
				"        led.toggle()\n",
		},

		{
			name:     "header with no body falls back to one unit",
			src:      "while True:",
			expected: "while True:\n    machine.idle()",
		},

		{
			name: "blank line between header and body",
			src: "while True:\n" +
				"\n" +
				"    led.on()\n",
			expected: "while True:\n" +
				"    machine.idle()\n" +
				"\n" +
				"    led.on()\n",
		},

		{
			name: "nested loops injected independently",
			src: "while True:\n" +
				"    for i in range(2):\n" +
				"        print(i)\n",
			expected: "while True:\n" +
				"    machine.idle()\n" +
				"    for i in range(2):\n" +
				"        machine.idle()\n" +
				"        print(i)\n",
		},

		{
			name: "indented loop inside function",
			src: "def spin():\n" +
				"    while True:\n" +
				"        pass\n",
			expected: "def spin():\n" +
				"    while True:\n" +
				"        machine.idle()\n" +
				"        pass\n",
		},

		{
			name: "tab indentation",
			src: "while True:\n" +
				"\tled.on()\n",
			expected: "while True:\n" +
				"\tmachine.idle()\n" +
				"\tled.on()\n",
		},

		{
			name:     "identifier starting with keyword is not a header",
			src:      "forward = 1\nwhilex:\n    pass\n",
			expected: "forward = 1\nwhilex:\n    pass\n",
		},

		{
			name:     "trailing whitespace after colon",
			src:      "while True:  \n    pass\n",
			expected: "while True:  \n    machine.idle()\n    pass\n",
		},

		{
			name: "carriage returns tolerated",
			src: "while True:\r\n" +
				"    pass\r\n",
			expected: "while True:\r\n" +
				"    machine.idle()\n" +
				"    pass\r\n",
		},

		// the transform is line oriented: a loop header inside a string
		// literal is indistinguishable from a real one
		{
			name: "loop header inside string literal is misidentified",
			src: "s = \"\"\"\n" +
				"while True:\n" +
				"\"\"\"\n",
			expected: "s = \"\"\"\n" +
				"while True:\n" +
				"    machine.idle()\n" +
				"\"\"\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := InjectYields(tc.src)
			if got != tc.expected {
				t.Fatalf("unexpected rewrite:\n--- got ---\n%s\n--- want ---\n%s", got, tc.expected)
			}
		})
	}
}
