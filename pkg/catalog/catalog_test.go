package catalog

import "testing"

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in   string
		want Layer
		ok   bool
	}{
		{"marketing", Marketing, true},
		{"  Analysis ", Analysis, true},
		{"ACTIVATION", Activation, true},
		{"warehouse", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLayer(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLayer(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLayerIndex(t *testing.T) {
	for i, l := range Sequence {
		if got := l.Index(); got != i {
			t.Errorf("%s.Index() = %d, want %d", l, got, i)
		}
	}
	if got := Layer("nope").Index(); got != -1 {
		t.Errorf("unknown Index() = %d, want -1", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 33 {
		t.Errorf("Len() = %d, want 33", c.Len())
	}

	layer, ok := c.LayerOf(AmplitudeAnalytics)
	if !ok || layer != Analysis {
		t.Errorf("LayerOf(amplitude-analytics) = %q, %v", layer, ok)
	}

	it, ok := c.Item("search")
	if !ok || it.Name != "Organic" || it.Layer != Marketing {
		t.Errorf("Item(search) = %+v, %v", it, ok)
	}

	items := c.Items(Sources)
	if len(items) == 0 || items[0].ID != AmplitudeSDK {
		t.Errorf("Items(sources)[0] = %+v", items)
	}
}

func TestPriority(t *testing.T) {
	if Priority(PaidAds) != 0 || Priority(AmplitudeSDK) != 0 || Priority(AmplitudeAnalytics) != 0 {
		t.Error("anchor items should have priority 0")
	}
	if Priority("email") != DefaultPriority {
		t.Errorf("Priority(email) = %d, want %d", Priority("email"), DefaultPriority)
	}
}
