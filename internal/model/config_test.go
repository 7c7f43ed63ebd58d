package model

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}

	if cfg.IDSeparator != "-" {
		t.Errorf("expected separator '-', got %q", cfg.IDSeparator)
	}
	if len(cfg.IDConfiguration) != 4 {
		t.Fatalf("expected 4 id sections, got %d", len(cfg.IDConfiguration))
	}
	if seq := cfg.IDConfiguration[3]; seq.Type != IDSectionSequence || seq.PaddingChar != "0" || seq.Length != 4 {
		t.Errorf("unexpected sequence section: %+v", seq)
	}
	if len(cfg.HardwareCategories) != 5 || cfg.HardwareCategories[3] != "Mac Mini" {
		t.Errorf("unexpected hardware categories: %v", cfg.HardwareCategories)
	}

	for _, name := range []string{LayoutLicenseFamily, LayoutHardwareFamily, LayoutLicenseInstance, LayoutHardwareInstance, LayoutUserProfile} {
		layout, ok := cfg.ModalLayouts[name]
		if !ok {
			t.Errorf("missing layout %q", name)
			continue
		}
		if len(layout.Tabs) == 0 {
			t.Errorf("layout %q has no tabs", name)
		}
	}
}

func TestDefaultConfigIsFresh(t *testing.T) {
	a, _ := DefaultConfig()
	b, _ := DefaultConfig()
	a.Sites[0] = "changed"
	if b.Sites[0] == "changed" {
		t.Error("DefaultConfig returned shared state")
	}
}

func TestCategoriesFor(t *testing.T) {
	cfg, _ := DefaultConfig()
	if got := cfg.CategoriesFor(AssetTypeHardware); got[0] != "Laptop" {
		t.Errorf("expected hardware categories, got %v", got)
	}
	if got := cfg.CategoriesFor(AssetTypeLicense); got[0] != "Microsoft" {
		t.Errorf("expected software categories, got %v", got)
	}
}
