package users

import "testing"

func TestRoleFromMetadataDefaultsToJobSeeker(t *testing.T) {
	role, explicit := roleFromMetadata(nil)
	if role != RoleJobSeeker {
		t.Fatalf("expected default %q, got %q", RoleJobSeeker, role)
	}
	if explicit {
		t.Fatal("default role must not be treated as explicit")
	}

	role, explicit = roleFromMetadata(map[string]interface{}{})
	if role != RoleJobSeeker || explicit {
		t.Fatalf("expected implicit default, got %q explicit=%v", role, explicit)
	}
}

func TestRoleFromMetadataExplicitRole(t *testing.T) {
	role, explicit := roleFromMetadata(map[string]interface{}{"role": RoleTalentSeeker})
	if role != RoleTalentSeeker || !explicit {
		t.Fatalf("expected explicit talent_seeker, got %q explicit=%v", role, explicit)
	}

	role, explicit = roleFromMetadata(map[string]interface{}{"role": RoleJobSeeker})
	if role != RoleJobSeeker || !explicit {
		t.Fatalf("expected explicit job_seeker, got %q explicit=%v", role, explicit)
	}
}

func TestRoleFromMetadataRejectsInvalidValues(t *testing.T) {
	cases := []interface{}{"admin", 42, nil, []string{RoleJobSeeker}}
	for _, raw := range cases {
		role, explicit := roleFromMetadata(map[string]interface{}{"role": raw})
		if role != RoleJobSeeker || explicit {
			t.Fatalf("value %v: expected implicit default, got %q explicit=%v", raw, role, explicit)
		}
	}
}
