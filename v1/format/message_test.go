package format

import "testing"

func TestFormatMessageSubstitution(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   []interface{}
		want     string
	}{
		{"single placeholder", "Test {0} message", []interface{}{"this"}, "Test this message"},
		{"two placeholders", "Test error {0}, {1}", []interface{}{"foo", "bar"}, "Test error foo, bar"},
		{"repeated placeholder", "{0} and {0}", []interface{}{"x"}, "x and x"},
		{"surplus params ignored", "Test debug {0}", []interface{}{"foo", "bar"}, "Test debug foo"},
		{"missing param left literal", "Test {5} message", []interface{}{"this"}, "Test {5} message"},
		{"nil params leave template", "Test {0} message", nil, "Test {0} message"},
		{"nil param element", "Test error {0} and {1}", []interface{}{nil, nil}, "Test error null and null"},
		{"no placeholders", "plain message", []interface{}{"unused"}, "plain message"},
		{"numeric param", "got {0}", []interface{}{42}, "got 42"},
		{"empty template", "", []interface{}{"x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMessage(tt.template, tt.params); got != tt.want {
				t.Fatalf("FormatMessage(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatMessageMalformedTemplates(t *testing.T) {
	params := []interface{}{"foo", "bar"}

	tests := []struct {
		name     string
		template string
	}{
		{"sub-format placeholder", "Test error {0, date} and {1, integer, currency}"},
		{"unknown sub-format", "Test warn {0, foo} and {1, bar}"},
		{"non-numeric index", "Test {x}"},
		{"unclosed brace", "Test {0 message"},
		{"negative index", "Test {-1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := formattingErrorPrefix + tt.template

			if got := FormatMessage(tt.template, params); got != want {
				t.Fatalf("FormatMessage(%q) = %q, want %q", tt.template, got, want)
			}
		})
	}
}
