package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/calebwren/reel-engine/pkg/content"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bundle.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &BundleValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Bundle file is valid!")
}

type BundleValidator struct {
	errors []string
}

func (v *BundleValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	// Validate filename format
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("bundle file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidBundleFilename(nameWithoutExt) {
		return fmt.Errorf("bundle filename '%s' must be lowercase snake_case (e.g., my_bundle.json, not my-bundle.json or MyBundle.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var b content.Bundle
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&b); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateBundle(&b)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *BundleValidator) validateBundle(b *content.Bundle) {
	v.validateIDFormat("bundle ID", b.ID)

	if len(b.Regions) == 0 {
		v.addError("bundle has no regions")
	}
	if len(b.Actions) == 0 {
		v.addError("bundle has no actions")
	}

	for i := range b.Regions {
		v.validateRegion(b, &b.Regions[i])
	}
	for i := range b.Fish {
		v.validateIDFormat("fish ID", b.Fish[i].ID)
	}
	for i := range b.Actions {
		v.validateAction(&b.Actions[i])
	}
	for i := range b.Items {
		v.validateIDFormat("item ID", b.Items[i].ID)
	}
	for i := range b.Skills {
		v.validateSkill(b, &b.Skills[i])
	}
	for i := range b.RigMods {
		v.validateIDFormat("rig mod ID", b.RigMods[i].ID)
	}
	for i := range b.Shops {
		v.validateShop(b, &b.Shops[i])
	}
	for i := range b.Contracts {
		v.validateContract(b, &b.Contracts[i])
	}

	for _, actionID := range b.BaseActions {
		if _, ok := b.ActionByID(actionID); !ok {
			v.addError(fmt.Sprintf("base action '%s' is not defined in actions", actionID))
		}
	}
}

func (v *BundleValidator) validateRegion(b *content.Bundle, region *content.Region) {
	v.validateIDFormat("region ID", region.ID)

	if len(region.Pool) == 0 {
		v.addError(fmt.Sprintf("region '%s' has an empty spawn pool", region.ID))
	}
	v.validatePool(b, region.Pool, fmt.Sprintf("region '%s'", region.ID))
}

func (v *BundleValidator) validatePool(b *content.Bundle, pool []content.SpawnWeight, context string) {
	total := 0
	for _, entry := range pool {
		if _, ok := b.FishByID(entry.FishID); !ok {
			v.addError(fmt.Sprintf("%s references unknown fish '%s'", context, entry.FishID))
		}
		if entry.Weight < 0 {
			v.addError(fmt.Sprintf("%s has a negative weight for fish '%s'", context, entry.FishID))
		}
		total += entry.Weight
	}
	if len(pool) > 0 && total <= 0 {
		v.addError(fmt.Sprintf("%s has no positive spawn weights", context))
	}
}

func (v *BundleValidator) validateAction(action *content.Action) {
	v.validateIDFormat("action ID", action.ID)

	switch action.Kind {
	case string(content.ActionReel), string(content.ActionBrace),
		string(content.ActionAdjust), string(content.ActionTechnique),
		"attack", "utility":
	default:
		v.addError(fmt.Sprintf("action '%s' has unknown kind '%s'", action.ID, action.Kind))
	}
}

func (v *BundleValidator) validateSkill(b *content.Bundle, skill *content.Skill) {
	v.validateIDFormat("skill ID", skill.ID)

	if skill.MaxRank < 1 {
		v.addError(fmt.Sprintf("skill '%s' must have max_rank >= 1", skill.ID))
	}

	switch skill.Type {
	case content.SkillPassive, content.SkillActive, content.SkillReactive:
	default:
		v.addError(fmt.Sprintf("skill '%s' has unknown type '%s'", skill.ID, skill.Type))
	}

	for _, prereq := range skill.Prereqs {
		if prereq == skill.ID {
			v.addError(fmt.Sprintf("skill '%s' lists itself as a prereq", skill.ID))
			continue
		}
		if _, ok := b.SkillByID(prereq); !ok {
			v.addError(fmt.Sprintf("skill '%s' references unknown prereq '%s'", skill.ID, prereq))
		}
	}

	if len(skill.GrantsActions) > 0 && skill.Type != content.SkillActive {
		v.addError(fmt.Sprintf("skill '%s' grants actions but is not ACTIVE", skill.ID))
	}
	for _, actionID := range skill.GrantsActions {
		if _, ok := b.ActionByID(actionID); !ok {
			v.addError(fmt.Sprintf("skill '%s' grants unknown action '%s'", skill.ID, actionID))
		}
	}
}

func (v *BundleValidator) validateShop(b *content.Bundle, shop *content.Shop) {
	v.validateIDFormat("shop ID", shop.ID)

	for i, row := range shop.Stock {
		switch {
		case row.ItemID != "" && row.ModID != "":
			v.addError(fmt.Sprintf("shop '%s' stock row %d sets both item_id and mod_id", shop.ID, i))
		case row.ItemID != "":
			if _, ok := b.ItemByID(row.ItemID); !ok {
				v.addError(fmt.Sprintf("shop '%s' stocks unknown item '%s'", shop.ID, row.ItemID))
			}
		case row.ModID != "":
			if _, ok := b.RigModByID(row.ModID); !ok {
				v.addError(fmt.Sprintf("shop '%s' stocks unknown rig mod '%s'", shop.ID, row.ModID))
			}
		default:
			v.addError(fmt.Sprintf("shop '%s' stock row %d references neither an item nor a mod", shop.ID, i))
		}
		if row.Price < 0 {
			v.addError(fmt.Sprintf("shop '%s' stock row %d has a negative price", shop.ID, i))
		}
	}
}

func (v *BundleValidator) validateContract(b *content.Bundle, contract *content.Contract) {
	v.validateIDFormat("contract ID", contract.ID)

	if _, ok := b.RegionByID(contract.RegionID); !ok {
		v.addError(fmt.Sprintf("contract '%s' references unknown region '%s'", contract.ID, contract.RegionID))
	}
	if contract.MinEncounters < 1 {
		v.addError(fmt.Sprintf("contract '%s' must have min_encounters >= 1", contract.ID))
	}
	if contract.MaxEncounters < contract.MinEncounters {
		v.addError(fmt.Sprintf("contract '%s' has max_encounters below min_encounters", contract.ID))
	}
	if contract.FightReward.Max < contract.FightReward.Min {
		v.addError(fmt.Sprintf("contract '%s' has an inverted fight_reward range", contract.ID))
	}
	if contract.FinalReward.Max < contract.FinalReward.Min {
		v.addError(fmt.Sprintf("contract '%s' has an inverted final_reward range", contract.ID))
	}
	if contract.ShopID != "" {
		if _, ok := b.ShopByID(contract.ShopID); !ok {
			v.addError(fmt.Sprintf("contract '%s' references unknown shop '%s'", contract.ID, contract.ShopID))
		}
	}
	v.validatePool(b, contract.Pool, fmt.Sprintf("contract '%s'", contract.ID))
}

func (v *BundleValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *BundleValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidBundleFilename(name string) bool {
	// Allow 'x.' prefix for experimental bundles
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
